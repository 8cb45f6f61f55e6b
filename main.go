package main

import "github.com/novahq/nova-admin/cmd"

func main() {
	cmd.Execute()
}
