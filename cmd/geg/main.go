package main

import (
	"geg-automation/cmd/geg/commands"
	"geg-automation/pkg/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
