package rules

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var quoteStripper = strings.NewReplacer(`"`, "", `'`, "")

// NormalizeKey removes every single and double quote from text and puts the
// rest into NFC so that keys typed with composed and decomposed characters
// compare equal. NormalizeKey(NormalizeKey(s)) == NormalizeKey(s).
func NormalizeKey(text string) string {
	return norm.NFC.String(quoteStripper.Replace(text))
}

// Regions lists the cloud region domains that must each have a client id.
// Order is the order of the resulting diagnostics.
var Regions = [...]string{
	"cac1.pure.cloud",
	"mypurecloud.com",
	"usw2.pure.cloud",
	"aps1.pure.cloud",
	"apne2.pure.cloud",
	"mypurecloud.com.au",
	"mypurecloud.jp",
	"mypurecloud.ie",
	"mypurecloud.de",
	"euw2.pure.cloud",
}

// Required keys of the config object.
var requiredConfigKeys = [...]string{"name", "settings", "clientIds", "customInteractionAttributes"}

const (
	frameworkMember   = "window.Framework"
	postMessageCallee = "window.parent.postMessage"
	contactsTarget    = "frameworkContacts"
	onSuccessName     = "onSuccess"
)
