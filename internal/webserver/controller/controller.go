package controller

import "strings"

// BaseURL returns the origin of the site for a fully qualified domain name,
// defaulting to http if it carries no scheme
func BaseURL(fqdn string) string {
	fqdn = strings.TrimSuffix(strings.TrimSpace(fqdn), "/")
	if !strings.HasPrefix(fqdn, "http://") && !strings.HasPrefix(fqdn, "https://") {
		fqdn = "http://" + fqdn
	}
	return fqdn
}
