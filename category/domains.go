package category

// builtinDomains maps registered domains to categories for browser
// activity. Lookups try the full host first and then each parent
// domain, so a more specific entry always beats a broader one.
var builtinDomains = map[string]Category{
	// Coding
	"github.com":            Coding,
	"gitlab.com":            Coding,
	"bitbucket.org":         Coding,
	"stackoverflow.com":     Coding,
	"stackexchange.com":     Coding,
	"developer.mozilla.org": Coding,
	"go.dev":                Coding,
	"pkg.go.dev":            Coding,
	"rust-lang.org":         Coding,
	"python.org":            Coding,
	"npmjs.com":             Coding,
	"crates.io":             Coding,
	"pypi.org":              Coding,
	"docker.com":            Coding,
	"kubernetes.io":         Coding,
	"leetcode.com":          Coding,
	"hackerrank.com":        Coding,
	"codewars.com":          Coding,
	"replit.com":            Coding,
	"codepen.io":            Coding,
	"jsfiddle.net":          Coding,
	"godbolt.org":           Coding,
	"regex101.com":          Coding,
	"sourcegraph.com":       Coding,
	"huggingface.co":        Coding,

	// Social media
	"facebook.com":    SocialMedia,
	"twitter.com":     SocialMedia,
	"x.com":           SocialMedia,
	"instagram.com":   SocialMedia,
	"tiktok.com":      SocialMedia,
	"reddit.com":      SocialMedia,
	"linkedin.com":    SocialMedia,
	"pinterest.com":   SocialMedia,
	"snapchat.com":    SocialMedia,
	"threads.net":     SocialMedia,
	"mastodon.social": SocialMedia,
	"bsky.app":        SocialMedia,
	"tumblr.com":      SocialMedia,
	"vk.com":          SocialMedia,
	"weibo.com":       SocialMedia,

	// Entertainment
	"youtube.com":      Entertainment,
	"netflix.com":      Entertainment,
	"twitch.tv":        Entertainment,
	"hulu.com":         Entertainment,
	"disneyplus.com":   Entertainment,
	"primevideo.com":   Entertainment,
	"max.com":          Entertainment,
	"spotify.com":      Entertainment,
	"soundcloud.com":   Entertainment,
	"crunchyroll.com":  Entertainment,
	"vimeo.com":        Entertainment,
	"imdb.com":         Entertainment,
	"steampowered.com": Entertainment,
	"epicgames.com":    Entertainment,
	"roblox.com":       Entertainment,
	"chess.com":        Entertainment,
	"lichess.org":      Entertainment,

	// Communication
	"gmail.com":           Communication,
	"mail.google.com":     Communication,
	"meet.google.com":     Communication,
	"outlook.live.com":    Communication,
	"outlook.office.com":  Communication,
	"slack.com":           Communication,
	"discord.com":         Communication,
	"whatsapp.com":        Communication,
	"telegram.org":        Communication,
	"teams.microsoft.com": Communication,
	"zoom.us":             Communication,
	"messenger.com":       Communication,

	// Productivity
	"notion.so":           Productivity,
	"trello.com":          Productivity,
	"asana.com":           Productivity,
	"airtable.com":        Productivity,
	"clickup.com":         Productivity,
	"monday.com":          Productivity,
	"todoist.com":         Productivity,
	"linear.app":          Productivity,
	"docs.google.com":     Productivity,
	"drive.google.com":    Productivity,
	"calendar.google.com": Productivity,
	"office.com":          Productivity,
	"onedrive.live.com":   Productivity,
	"evernote.com":        Productivity,
	"miro.com":            Productivity,
	"atlassian.net":       Productivity,
	"chatgpt.com":         Productivity,
	"claude.ai":           Productivity,
	"gemini.google.com":   Productivity,
	"perplexity.ai":       Productivity,

	// Education
	"coursera.org":       Education,
	"udemy.com":          Education,
	"edx.org":            Education,
	"khanacademy.org":    Education,
	"duolingo.com":       Education,
	"brilliant.org":      Education,
	"wikipedia.org":      Education,
	"codecademy.com":     Education,
	"freecodecamp.org":   Education,
	"pluralsight.com":    Education,
	"skillshare.com":     Education,
	"arxiv.org":          Education,
	"scholar.google.com": Education,

	// Finance
	"paypal.com":        Finance,
	"coinbase.com":      Finance,
	"binance.com":       Finance,
	"robinhood.com":     Finance,
	"fidelity.com":      Finance,
	"vanguard.com":      Finance,
	"schwab.com":        Finance,
	"chase.com":         Finance,
	"bankofamerica.com": Finance,
	"wellsfargo.com":    Finance,
	"intuit.com":        Finance,
	"ynab.com":          Finance,
	"tradingview.com":   Finance,
	"finance.yahoo.com": Finance,
	"bloomberg.com":     Finance,

	// Reading
	"medium.com":           Reading,
	"substack.com":         Reading,
	"news.ycombinator.com": Reading,
	"nytimes.com":          Reading,
	"theguardian.com":      Reading,
	"bbc.com":              Reading,
	"bbc.co.uk":            Reading,
	"cnn.com":              Reading,
	"reuters.com":          Reading,
	"washingtonpost.com":   Reading,
	"economist.com":        Reading,
	"wired.com":            Reading,
	"theverge.com":         Reading,
	"arstechnica.com":      Reading,
	"engadget.com":         Reading,
	"getpocket.com":        Reading,
	"goodreads.com":        Reading,

	// Design
	"dribbble.com":     Design,
	"behance.net":      Design,
	"figma.com":        Design,
	"canva.com":        Design,
	"unsplash.com":     Design,
	"pexels.com":       Design,
	"fonts.google.com": Design,
	"coolors.co":       Design,
}
