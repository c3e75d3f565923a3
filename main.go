package main

import "github.com/ausmotors/storefront/pkg/cmd"

func main() {
	cmd.Execute()
}
