package wordlist

import _ "embed"

//go:embed default.txt
var embeddedWordlist string
