package category

// builtinApps maps normalized app names (lowercase, no .exe suffix) to
// their builtin category. Browsers are deliberately absent: they are
// resolved through the domain table instead.
var builtinApps = map[string]Category{
	// Editors and IDEs
	"code":            Coding,
	"code - insiders": Coding,
	"vscodium":        Coding,
	"cursor":          Coding,
	"zed":             Coding,
	"fleet":           Coding,
	"sublime_text":    Coding,
	"subl":            Coding,
	"atom":            Coding,
	"brackets":        Coding,
	"notepad++":       Coding,
	"vim":             Coding,
	"gvim":            Coding,
	"nvim":            Coding,
	"neovide":         Coding,
	"emacs":           Coding,
	"runemacs":        Coding,
	"helix":           Coding,
	"hx":              Coding,
	"micro":           Coding,
	"lapce":           Coding,
	"lite-xl":         Coding,
	"kate":            Coding,
	"kwrite":          Coding,
	"geany":           Coding,
	"gedit":           Coding,
	"mousepad":        Coding,
	"bluefish":        Coding,
	"idea":            Coding,
	"idea64":          Coding,
	"pycharm":         Coding,
	"pycharm64":       Coding,
	"webstorm":        Coding,
	"webstorm64":      Coding,
	"goland":          Coding,
	"goland64":        Coding,
	"clion":           Coding,
	"clion64":         Coding,
	"rider":           Coding,
	"rider64":         Coding,
	"phpstorm":        Coding,
	"phpstorm64":      Coding,
	"rubymine":        Coding,
	"rubymine64":      Coding,
	"datagrip":        Coding,
	"datagrip64":      Coding,
	"studio64":        Coding,
	"android studio":  Coding,
	"eclipse":         Coding,
	"netbeans":        Coding,
	"netbeans64":      Coding,
	"devenv":          Coding,
	"visual studio":   Coding,
	"xcode":           Coding,
	"rstudio":         Coding,
	"spyder":          Coding,
	"arduino":         Coding,
	"arduino ide":     Coding,
	"processing":      Coding,
	"godot":           Coding,
	"unity":           Coding,
	"unrealeditor":    Coding,

	// Terminals and dev tools
	"terminal":         Coding,
	"iterm":            Coding,
	"iterm2":           Coding,
	"alacritty":        Coding,
	"kitty":            Coding,
	"wezterm":          Coding,
	"wezterm-gui":      Coding,
	"hyper":            Coding,
	"konsole":          Coding,
	"gnome-terminal":   Coding,
	"xterm":            Coding,
	"urxvt":            Coding,
	"tilix":            Coding,
	"terminator":       Coding,
	"windowsterminal":  Coding,
	"wt":               Coding,
	"powershell":       Coding,
	"pwsh":             Coding,
	"cmd":              Coding,
	"mintty":           Coding,
	"warp":             Coding,
	"gitkraken":        Coding,
	"github desktop":   Coding,
	"githubdesktop":    Coding,
	"sourcetree":       Coding,
	"fork":             Coding,
	"smartgit":         Coding,
	"tower":            Coding,
	"postman":          Coding,
	"insomnia":         Coding,
	"dbeaver":          Coding,
	"mysqlworkbench":   Coding,
	"pgadmin4":         Coding,
	"tableplus":        Coding,
	"sequelpro":        Coding,
	"docker desktop":   Coding,
	"dockerdesktop":    Coding,
	"jupyter notebook": Coding,
	"jupyter-lab":      Coding,

	// Communication
	"slack":            Communication,
	"discord":          Communication,
	"teams":            Communication,
	"ms-teams":         Communication,
	"microsoft teams":  Communication,
	"zoom":             Communication,
	"zoom.us":          Communication,
	"skype":            Communication,
	"telegram":         Communication,
	"telegram desktop": Communication,
	"signal":           Communication,
	"signal-desktop":   Communication,
	"whatsapp":         Communication,
	"wechat":           Communication,
	"line":             Communication,
	"viber":            Communication,
	"element":          Communication,
	"gajim":            Communication,
	"pidgin":           Communication,
	"hexchat":          Communication,
	"weechat":          Communication,
	"irssi":            Communication,
	"mumble":           Communication,
	"teamspeak":        Communication,
	"teamspeak3":       Communication,
	"caprine":          Communication,
	"beeper":           Communication,
	"ferdium":          Communication,
	"franz":            Communication,
	"rambox":           Communication,
	"webex":            Communication,
	"webexmta":         Communication,
	"gotomeeting":      Communication,
	"jitsi meet":       Communication,
	"jitsi":            Communication,
	"thunderbird":      Communication,
	"outlook":          Communication,
	"olk":              Communication,
	"mailspring":       Communication,
	"mailbird":         Communication,
	"emclient":         Communication,
	"geary":            Communication,
	"evolution":        Communication,
	"kmail":            Communication,
	"airmail":          Communication,
	"spark":            Communication,
	"superhuman":       Communication,

	// Productivity
	"notion":         Productivity,
	"obsidian":       Productivity,
	"logseq":         Productivity,
	"roam research":  Productivity,
	"evernote":       Productivity,
	"onenote":        Productivity,
	"onenoteim":      Productivity,
	"joplin":         Productivity,
	"standardnotes":  Productivity,
	"standard notes": Productivity,
	"simplenote":     Productivity,
	"bear":           Productivity,
	"craft":          Productivity,
	"winword":        Productivity,
	"excel":          Productivity,
	"powerpnt":       Productivity,
	"msaccess":       Productivity,
	"visio":          Productivity,
	"libreoffice":    Productivity,
	"soffice":        Productivity,
	"soffice.bin":    Productivity,
	"lowriter":       Productivity,
	"localc":         Productivity,
	"loimpress":      Productivity,
	"openoffice":     Productivity,
	"wps":            Productivity,
	"wpsoffice":      Productivity,
	"pages":          Productivity,
	"numbers":        Productivity,
	"keynote":        Productivity,
	"todoist":        Productivity,
	"ticktick":       Productivity,
	"things":         Productivity,
	"things3":        Productivity,
	"omnifocus":      Productivity,
	"anydo":          Productivity,
	"trello":         Productivity,
	"asana":          Productivity,
	"clickup":        Productivity,
	"airtable":       Productivity,
	"linear":         Productivity,
	"miro":           Productivity,
	"mural":          Productivity,
	"fantastical":    Productivity,
	"calendar":       Productivity,
	"gnome-calendar": Productivity,
	"korganizer":     Productivity,
	"reminders":      Productivity,
	"notability":     Productivity,
	"goodnotes":      Productivity,
	"agenda":         Productivity,
	"workflowy":      Productivity,
	"dynalist":       Productivity,
	"anytype":        Productivity,

	// Design
	"photoshop":          Design,
	"illustrator":        Design,
	"indesign":           Design,
	"afterfx":            Design,
	"aftereffects":       Design,
	"premiere pro":       Design,
	"premiere":           Design,
	"lightroom":          Design,
	"adobe xd":           Design,
	"xd":                 Design,
	"figma":              Design,
	"sketch":             Design,
	"affinity designer":  Design,
	"affinity photo":     Design,
	"affinity publisher": Design,
	"gimp":               Design,
	"gimp-2.10":          Design,
	"inkscape":           Design,
	"krita":              Design,
	"blender":            Design,
	"cinema4d":           Design,
	"c4d":                Design,
	"maya":               Design,
	"3dsmax":             Design,
	"zbrush":             Design,
	"substance painter":  Design,
	"aseprite":           Design,
	"pixelmator":         Design,
	"pixelmator pro":     Design,
	"canva":              Design,
	"framer":             Design,
	"principle":          Design,
	"protopie":           Design,
	"darktable":          Design,
	"rawtherapee":        Design,
	"paintdotnet":        Design,
	"paint.net":          Design,
	"mspaint":            Design,
	"clipstudiopaint":    Design,
	"clip studio paint":  Design,
	"fusion360":          Design,
	"freecad":            Design,
	"kicad":              Design,
	"autocad":            Design,
	"acad":               Design,
	"solidworks":         Design,
	"sldworks":           Design,
	"rhinoceros":         Design,
	"openscad":           Design,

	// Entertainment
	"spotify":                       Entertainment,
	"vlc":                           Entertainment,
	"mpv":                           Entertainment,
	"mplayer":                       Entertainment,
	"netflix":                       Entertainment,
	"steam":                         Entertainment,
	"steamwebhelper":                Entertainment,
	"epicgameslauncher":             Entertainment,
	"epic games launcher":           Entertainment,
	"origin":                        Entertainment,
	"eadesktop":                     Entertainment,
	"battle.net":                    Entertainment,
	"battlenet":                     Entertainment,
	"galaxyclient":                  Entertainment,
	"gog galaxy":                    Entertainment,
	"riotclientservices":            Entertainment,
	"leagueclient":                  Entertainment,
	"league of legends":             Entertainment,
	"valorant":                      Entertainment,
	"cs2":                           Entertainment,
	"csgo":                          Entertainment,
	"dota2":                         Entertainment,
	"minecraft":                     Entertainment,
	"minecraftlauncher":             Entertainment,
	"fortniteclient-win64-shipping": Entertainment,
	"rocketleague":                  Entertainment,
	"eldenring":                     Entertainment,
	"cyberpunk2077":                 Entertainment,
	"witcher3":                      Entertainment,
	"retroarch":                     Entertainment,
	"pcsx2":                         Entertainment,
	"rpcs3":                         Entertainment,
	"yuzu":                          Entertainment,
	"cemu":                          Entertainment,
	"itunes":                        Entertainment,
	"music":                         Entertainment,
	"apple music":                   Entertainment,
	"foobar2000":                    Entertainment,
	"winamp":                        Entertainment,
	"audacious":                     Entertainment,
	"rhythmbox":                     Entertainment,
	"clementine":                    Entertainment,
	"strawberry":                    Entertainment,
	"plex":                          Entertainment,
	"plexamp":                       Entertainment,
	"kodi":                          Entertainment,
	"stremio":                       Entertainment,
	"twitch":                        Entertainment,

	// Social media
	"twitter":   SocialMedia,
	"x":         SocialMedia,
	"instagram": SocialMedia,
	"facebook":  SocialMedia,
	"messenger": SocialMedia,
	"tiktok":    SocialMedia,
	"snapchat":  SocialMedia,
	"tweetdeck": SocialMedia,

	// Education
	"anki":           Education,
	"duolingo":       Education,
	"rosetta stone":  Education,
	"rosettastone":   Education,
	"geogebra":       Education,
	"mathematica":    Education,
	"matlab":         Education,
	"octave":         Education,
	"octave-gui":     Education,
	"maple":          Education,
	"stata":          Education,
	"spssstatistics": Education,
	"texstudio":      Education,
	"texmaker":       Education,
	"texworks":       Education,
	"lyx":            Education,
	"zotero":         Education,
	"mendeley":       Education,
	"endnote":        Education,
	"stellarium":     Education,
	"celestia":       Education,
	"google earth":   Education,
	"googleearth":    Education,

	// Utilities
	"explorer":             Utilities,
	"finder":               Utilities,
	"nautilus":             Utilities,
	"dolphin":              Utilities,
	"thunar":               Utilities,
	"pcmanfm":              Utilities,
	"nemo":                 Utilities,
	"caja":                 Utilities,
	"ranger":               Utilities,
	"doublecmd":            Utilities,
	"totalcmd":             Utilities,
	"total commander":      Utilities,
	"winrar":               Utilities,
	"7zfm":                 Utilities,
	"7-zip":                Utilities,
	"peazip":               Utilities,
	"keka":                 Utilities,
	"the unarchiver":       Utilities,
	"ark":                  Utilities,
	"file-roller":          Utilities,
	"taskmgr":              Utilities,
	"task manager":         Utilities,
	"activity monitor":     Utilities,
	"activitymonitor":      Utilities,
	"systemsettings":       Utilities,
	"system preferences":   Utilities,
	"system settings":      Utilities,
	"control":              Utilities,
	"regedit":              Utilities,
	"mmc":                  Utilities,
	"gnome-system-monitor": Utilities,
	"ksysguard":            Utilities,
	"ccleaner":             Utilities,
	"bleachbit":            Utilities,
	"cleanmymac":           Utilities,
	"malwarebytes":         Utilities,
	"virtualbox":           Utilities,
	"vmware":               Utilities,
	"vmplayer":             Utilities,
	"virt-manager":         Utilities,
	"utm":                  Utilities,
	"parallels desktop":    Utilities,
	"parallels":            Utilities,
	"qbittorrent":          Utilities,
	"transmission":         Utilities,
	"deluge":               Utilities,
	"utorrent":             Utilities,
	"filezilla":            Utilities,
	"winscp":               Utilities,
	"cyberduck":            Utilities,
	"putty":                Utilities,
	"teamviewer":           Utilities,
	"anydesk":              Utilities,
	"rustdesk":             Utilities,
	"remmina":              Utilities,
	"mstsc":                Utilities,
	"obs":                  Utilities,
	"obs64":                Utilities,
	"obs studio":           Utilities,
	"sharex":               Utilities,
	"snagit":               Utilities,
	"greenshot":            Utilities,
	"flameshot":            Utilities,
	"spectacle":            Utilities,
	"everything":           Utilities,
	"alfred":               Utilities,
	"raycast":              Utilities,
	"ueli":                 Utilities,
	"keepass":              Utilities,
	"keepassxc":            Utilities,
	"1password":            Utilities,
	"bitwarden":            Utilities,
	"lastpass":             Utilities,
	"veracrypt":            Utilities,
	"syncthing":            Utilities,
	"dropbox":              Utilities,
	"onedrive":             Utilities,
	"google drive":         Utilities,
	"googledrivesync":      Utilities,
	"nextcloud":            Utilities,
	"megasync":             Utilities,
	"rufus":                Utilities,
	"balenaetcher":         Utilities,
	"gparted":              Utilities,
	"disk utility":         Utilities,
	"diskutility":          Utilities,

	// Finance
	"quicken":     Finance,
	"ynab":        Finance,
	"moneydance":  Finance,
	"gnucash":     Finance,
	"homebank":    Finance,
	"kmymoney":    Finance,
	"turbotax":    Finance,
	"quickbooks":  Finance,
	"banktivity":  Finance,
	"tradingview": Finance,
	"thinkorswim": Finance,
	"metatrader":  Finance,
	"mt4":         Finance,
	"mt5":         Finance,
	"ninjatrader": Finance,
	"webull":      Finance,
	"binance":     Finance,
	"exodus":      Finance,
	"electrum":    Finance,
	"ledger live": Finance,
	"ledgerlive":  Finance,

	// Reading
	"kindle":       Reading,
	"calibre":      Reading,
	"ebook-viewer": Reading,
	"acrord32":     Reading,
	"acrobat":      Reading,
	"adobe reader": Reading,
	"foxitreader":  Reading,
	"foxit reader": Reading,
	"sumatrapdf":   Reading,
	"evince":       Reading,
	"okular":       Reading,
	"zathura":      Reading,
	"mupdf":        Reading,
	"preview":      Reading,
	"skim":         Reading,
	"books":        Reading,
	"apple books":  Reading,
	"ibooks":       Reading,
	"rssguard":     Reading,
	"quiterss":     Reading,
	"liferea":      Reading,
	"newsflow":     Reading,
	"instapaper":   Reading,
}

// browsers is the set of normalized app names treated as web browsers.
// Browser activity resolves through the domain table, falling back to
// Browsing.
var browsers = map[string]struct{}{
	"chrome":           {},
	"google chrome":    {},
	"chromium":         {},
	"chromium-browser": {},
	"msedge":           {},
	"microsoft edge":   {},
	"firefox":          {},
	"firefox-esr":      {},
	"librewolf":        {},
	"waterfox":         {},
	"brave":            {},
	"brave browser":    {},
	"opera":            {},
	"opera_gx":         {},
	"vivaldi":          {},
	"safari":           {},
	"arc":              {},
	"zen":              {},
	"thorium":          {},
	"qutebrowser":      {},
	"epiphany":         {},
	"falkon":           {},
	"midori":           {},
	"palemoon":         {},
	"seamonkey":        {},
	"tor browser":      {},
	"torbrowser":       {},
	"iexplore":         {},
}
