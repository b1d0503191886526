package main

import "github.com/nutriflavoros/nutriplan-cli/cmd/nutriplan"

func main() {
	nutriplan.Execute()
}
