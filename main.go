// Package main provides the inslake CLI application.
// inslake builds a bronze/silver/gold data lake from raw insurance
// exports.
package main

import "github.com/inslake/inslake/cmd"

func main() {
	cmd.Execute()
}
