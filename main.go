/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ahiokk/dazzlepack/cmd"

func main() {
	cmd.Execute()
}
