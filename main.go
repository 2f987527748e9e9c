package main

import "github.com/tanq16/recipeqa/cmd"

func main() {
	cmd.Execute()
}
