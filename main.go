package main

import "github.com/Manu343726/mclog/cmd"

func main() {
	cmd.Execute()
}
