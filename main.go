package main

import "github.com/CodMac/ng-di-transform/cmd"

func main() {
	cmd.Execute()
}
