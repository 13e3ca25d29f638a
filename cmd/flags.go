package cmd

import (
	"flag"
)

type Flags struct {
	Hashtags       string
	Enrich         string
	Platform       string
	Import         string
	Stats          bool
	Limit          int
	Version        bool
	RefreshCommand string
}

func ParseFlags() (Flags, string) {
	flags := Flags{}

	flag.StringVar(&flags.Hashtags, "hashtag", "", "Comma-separated hashtags to discover creators from")
	flag.StringVar(&flags.Hashtags, "t", "", "Comma-separated hashtags to discover creators from (shorthand)")
	flag.StringVar(&flags.Enrich, "enrich", "", "Creator handle to enrich with engagement metrics")
	flag.StringVar(&flags.Enrich, "e", "", "Creator handle to enrich with engagement metrics (shorthand)")
	flag.StringVar(&flags.Platform, "platform", "instagram", "Platform for enrichment: instagram or tiktok")
	flag.StringVar(&flags.Platform, "p", "instagram", "Platform for enrichment (shorthand)")
	flag.StringVar(&flags.Import, "import", "", "Comma-separated Apify dataset IDs to import profiles from")
	flag.StringVar(&flags.Import, "i", "", "Comma-separated Apify dataset IDs to import profiles from (shorthand)")
	flag.BoolVar(&flags.Stats, "stats", false, "Print database stats and exit")
	flag.IntVar(&flags.Limit, "limit", 0, "Override results per hashtag for this run")
	flag.BoolVar(&flags.Version, "v", false, "Display version information")
	flag.BoolVar(&flags.Version, "version", false, "Display version information")

	flag.Parse()

	args := flag.Args()
	var subcommand string

	if len(args) > 0 {
		subcommand = args[0]
		if subcommand == "refresh" && len(args) > 1 {
			flags.RefreshCommand = args[1]
		}
	}

	return flags, subcommand
}
