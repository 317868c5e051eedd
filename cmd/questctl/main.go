package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-quest-api/internal/config"
	"github.com/vfg2006/sales-quest-api/pkg/log"
)

const appName = "questctl"

func usage() {
	fmt.Fprintf(os.Stderr, "%s: Sales Quest command line client\n\n", appName)
	fmt.Fprintf(os.Stderr, "Usage:\n  %s [-v] [command] [flags]\n\n", appName)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  show      Show the leaderboard, challenge or team view")
	fmt.Fprintln(os.Stderr, "  upload    Upload a CSV file")
	fmt.Fprintln(os.Stderr, "  template  Print the CSV template")
	fmt.Fprintln(os.Stderr, "  settings  Show or update the quest weightings")
	fmt.Fprintln(os.Stderr, "  uploads   List the upload history")
	fmt.Fprintln(os.Stderr, "  export    Write the leaderboard to an XLSX file")
	fmt.Fprintln(os.Stderr, "  help      Show this help")
	fmt.Fprintln(os.Stderr, "\nFlags:")
	flag.PrintDefaults()
}

func main() {
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		flag.Usage()
		return
	}

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := logrus.WarnLevel.String()
	if *verbose {
		level = logrus.DebugLevel.String()
	}
	_ = log.Setup(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli, closeCache, err := newApp(ctx, cfg, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeCache()

	if err := cli.run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeCache()
		os.Exit(1)
	}
}
