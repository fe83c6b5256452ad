// Command tlbsim simulates a direct-mapped TLB on a trace of memory requests.
package main

import (
	"github.com/AltayOzkan/TLB-Project/cmd"
	"github.com/tebeka/atexit"
)

func main() {
	cmd.Execute()
	atexit.Exit(0)
}
