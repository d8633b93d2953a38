// Package main is the entry point for the report generator.
package main

import "reportgen/cmd/reportgen/cmd"

func main() {
	cmd.Execute()
}
