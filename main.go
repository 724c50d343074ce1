package main

import "github.com/aruushpasupathi/policy-compliance-checker/cmd"

func main() {
	cmd.Execute()
}
