package main

import (
	"fmt"

	echoapi "github.com/smartbit/smartbit/apps/api/echo"
)

// devToken prints a signed JWT so local clients can call the API
// without going through the auth provider.
func (cli *commandLine) devToken(userID, name string, admin bool) error {
	claims := echoapi.GetUserClaims(cli.conf, userID, name, "", admin)
	token, err := echoapi.GenerateToken(cli.conf, claims)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
