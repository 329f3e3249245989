package main

import "github.com/AlexCourivaud/ShareTech2/cmd"

func main() {
	cmd.Execute()
}
