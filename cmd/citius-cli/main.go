package main

import (
	"citius-scraper/cmd/citius-cli/commands"
	"citius-scraper/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
