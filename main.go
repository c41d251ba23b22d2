/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/du0ngtrunghieu/ttd-attach/cmd"

func main() {
	cmd.Execute()
}
