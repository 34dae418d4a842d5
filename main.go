package main

import "github.com/vqatools/vqa-annotator/cmd"

func main() {
	cmd.Execute()
}
