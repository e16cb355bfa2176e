// Package main is the entry point for the Refract CLI.
package main

import "refract.dev/pkg/refract/cmd"

func main() {
	cmd.Execute()
}
