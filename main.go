package main

import "github.com/condosys/condo-management/cmd"

func main() {
	cmd.Execute()
}
