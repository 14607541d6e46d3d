package main

import "github.com/theirongolddev/filmdesk/cmd"

func main() {
	cmd.Execute()
}
