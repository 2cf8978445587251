package main

import (
	"fmt"
	"os"

	"fichaje.app/fichaje/security"
)

// Issues an admin session token without going through the login endpoint,
// for curl sessions during development.
func main() {
	token, err := security.CreateIdentityToken(&security.AdminIdentity{
		CompanyID: os.Getenv("FICHAJE_COMPANY_ID"),
		Name:      "dev",
	}, os.Getenv("FICHAJE_SIGNING_SECRET"), 8*3600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
