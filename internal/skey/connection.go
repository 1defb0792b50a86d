package skey

import "strings"

// ConnectionType is an ISOGEN end connection code.
type ConnectionType struct {
	Code        string
	Description string
}

var ConnectionTypes = []ConnectionType{
	{"BW", "Butt Weld"},
	{"SW", "Socket Weld"},
	{"FL", "Flanged"},
	{"THD", "Threaded"},
	{"PL", "Plain"},
	{"CP", "Compression"},
	{"SC", "Screwed"},
	{"PE", "Plain End"},
	{"BE", "Beveled End"},
	{"TE", "Threaded End"},
}

func LookupConnectionType(code string) (ConnectionType, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, ct := range ConnectionTypes {
		if ct.Code == code {
			return ct, true
		}
	}
	return ConnectionType{}, false
}
