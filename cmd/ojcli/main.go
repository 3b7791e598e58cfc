package main

import (
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for static builds

	"github.com/ericfisherdev/ojcli/cmd/ojcli/cmd"
)

func main() {
	cmd.Execute()
}
