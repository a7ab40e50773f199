package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kc3dnx/id5100d/pkg/client"
)

var (
	addr = flag.String("addr", "http://127.0.0.1:8080", "Daemon API address")
)

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		showHelp()
		return
	}

	c := client.New(*addr)

	if err := runCommand(c, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(c *client.Client, args []string) error {
	cmd := strings.ToLower(args[0])
	args = args[1:]

	switch cmd {
	case "status":
		st, err := c.GetStatus()
		if err != nil {
			return err
		}
		fmt.Printf("Frequency:  %d Hz\n", st.Frequency)
		fmt.Printf("Mode:       %s (%d Hz)\n", st.Mode, st.Bandwidth)
		fmt.Printf("VFO:        %s\n", st.VFO)
		fmt.Printf("Dual watch: %v\n", st.DualWatch)
		fmt.Printf("PTT:        %v\n", st.PTT)
		fmt.Printf("Uptime:     %ds\n", st.UptimeSecs)
		if st.Mock {
			fmt.Println("Radio:      simulator")
		}
		return nil

	case "caps":
		raw, err := c.GetCapabilities()
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return err
		}
		fmt.Println(buf.String())
		return nil

	case "freq":
		if len(args) != 1 {
			return fmt.Errorf("usage: freq <hz>")
		}
		hz, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid frequency %q", args[0])
		}
		return c.SetFrequency(hz)

	case "mode":
		if len(args) < 1 {
			return fmt.Errorf("usage: mode <name> [bandwidth]")
		}
		bandwidth := 0
		if len(args) > 1 {
			bandwidth, _ = strconv.Atoi(args[1])
		}
		return c.SetMode(args[0], bandwidth)

	case "vfo":
		if len(args) != 1 {
			return fmt.Errorf("usage: vfo <A|B|Main|Sub>")
		}
		return c.SetVFO(args[0])

	case "split":
		if len(args) < 2 {
			return fmt.Errorf("usage: split <on|off> <tx-vfo>")
		}
		return c.SetSplit(args[0] == "on", args[1], "")

	case "ptt":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return fmt.Errorf("usage: ptt <on|off>")
		}
		return c.SetPTT(args[0] == "on")

	case "func":
		switch len(args) {
		case 1:
			enabled, err := c.GetFunc(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %v\n", args[0], enabled)
			return nil
		case 2:
			return c.SetFunc(args[0], args[1] == "on")
		default:
			return fmt.Errorf("usage: func <name> [on|off]")
		}

	case "level":
		switch len(args) {
		case 1:
			value, err := c.GetLevel(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d\n", args[0], value)
			return nil
		case 2:
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid level value %q", args[1])
			}
			return c.SetLevel(args[0], value)
		default:
			return fmt.Errorf("usage: level <name> [value]")
		}

	case "audit":
		limit := 20
		if len(args) > 0 {
			limit, _ = strconv.Atoi(args[0])
		}
		entries, err := c.GetAudit(limit)
		if err != nil {
			return err
		}
		for _, e := range entries {
			result := "ok"
			if !e.OK {
				result = "FAILED: " + e.Error
			}
			fmt.Printf("%s  %-14s %-24s %s\n", e.Timestamp, e.Op, e.Detail, result)
		}
		return nil

	default:
		showHelp()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func showHelp() {
	fmt.Println("id5100ctl - ID-5100 Daemon Control Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s [options] <command> [args]\n", os.Args[0])
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -addr <url>    Daemon API address (default: http://127.0.0.1:8080)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  status                 Show radio status")
	fmt.Println("  caps                   Show radio capabilities")
	fmt.Println("  freq <hz>              Set dial frequency")
	fmt.Println("  mode <name> [width]    Set operating mode (FM, FMN, AM, AMN, DV)")
	fmt.Println("  vfo <sel>              Select VFO (A, B, Main, Sub)")
	fmt.Println("  split <on|off> <tx>    Configure split operation")
	fmt.Println("  ptt <on|off>           Key or unkey the transmitter")
	fmt.Println("  func <name> [on|off]   Read or set a function toggle")
	fmt.Println("  level <name> [value]   Read or set a level control")
	fmt.Println("  audit [limit]          Show recent operations from the audit log")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s freq 145500000\n", os.Args[0])
	fmt.Printf("  %s mode FMN\n", os.Args[0])
	fmt.Printf("  %s func DualWatch on\n", os.Args[0])
}
