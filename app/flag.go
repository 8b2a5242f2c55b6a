package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Report period: today, yesterday, 7days, 14days, 30days, 90days, 180days, 365days, all-time",
		Value:   "7days",
	}

	startFlag = &cli.StringFlag{
		Name:    "start",
		Aliases: []string{"s"},
		Usage:   "Report start date; understands natural language (e.g. '3 days ago')",
	}

	endFlag = &cli.StringFlag{
		Name:    "end",
		Aliases: []string{"e"},
		Usage:   "Report end date (defaults to now)",
	}

	tagFlag = &cli.StringFlag{
		Name:    "tag",
		Aliases: []string{"t"},
		Usage:   "Restrict to sessions with one of these comma-delimited tags",
	}

	unknownFlag = &cli.BoolFlag{
		Name:  "unknown",
		Usage: "List apps that resolved to Uncategorized instead",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print sessions as JSON",
	}

	categoryFlag = &cli.StringFlag{
		Name:    "category",
		Aliases: []string{"c"},
		Usage:   "Category name (builtin or custom)",
	}

	durationFlag = &cli.DurationFlag{
		Name:    "duration",
		Aliases: []string{"d"},
		Usage:   "Session length (e.g. 1h30m)",
	}

	atFlag = &cli.StringFlag{
		Name:  "at",
		Usage: "When the session ended; understands natural language (defaults to now)",
	}

	appFlag = &cli.StringFlag{
		Name:  "app",
		Usage: "App name to attribute the session to",
	}

	projectFlag = &cli.StringFlag{
		Name:  "project",
		Usage: "Project to attribute the session to",
	}

	targetFlag = &cli.DurationFlag{
		Name:  "target",
		Usage: "Daily target duration (e.g. 2h)",
	}

	directionFlag = &cli.StringFlag{
		Name:  "direction",
		Usage: "Goal direction: 'min' (reach at least) or 'max' (stay under)",
		Value: "min",
	}
)
