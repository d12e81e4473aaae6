package generate

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// domainParts splits a hostname into subdomain, registrable name, and
// public suffix. IP addresses yield nothing.
type domainParts struct {
	Subdomain string
	Domain    string
	Suffix    string
}

// splitHost extracts domain parts from a target URL host.
func splitHost(host string) domainParts {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if net.ParseIP(host) != nil {
		return domainParts{}
	}

	suffix, _ := publicsuffix.PublicSuffix(host)
	if suffix == "" || suffix == host {
		return domainParts{Domain: host}
	}

	rest := strings.TrimSuffix(strings.TrimSuffix(host, suffix), ".")
	if rest == "" {
		return domainParts{Suffix: suffix}
	}

	parts := domainParts{Suffix: suffix}
	if idx := strings.LastIndex(rest, "."); idx >= 0 {
		parts.Subdomain = rest[:idx]
		parts.Domain = rest[idx+1:]
	} else {
		parts.Domain = rest
	}
	return parts
}

// isIPTarget reports whether the URL host is a bare IP address.
func isIPTarget(u *url.URL) bool {
	return net.ParseIP(u.Hostname()) != nil
}

// domainBackupExtensions combine with name variations to form likely
// backup filenames.
var domainBackupExtensions = dedup(concat(ArchiveExtensions, BackupSuffixes, DatabaseExtensions))

// Bounds on the cross product so a many-labelled host does not
// explode the candidate count.
const (
	maxDomainVariations = 100
	maxDomainExtensions = 50
)

// DomainWordlist derives candidate filenames from the target's own
// name: developers archive sites as <domain>.zip, <sub>_<domain>.sql
// and the like far more often than as anything from a static list.
func DomainWordlist(u *url.URL) []string {
	parts := splitHost(u.Host)
	if parts.Domain == "" {
		return nil
	}

	variations := domainVariations(parts)
	if len(variations) > maxDomainVariations {
		variations = variations[:maxDomainVariations]
	}
	exts := domainBackupExtensions
	if len(exts) > maxDomainExtensions {
		exts = exts[:maxDomainExtensions]
	}

	words := make([]string, 0, len(variations)*len(exts))
	for _, v := range variations {
		for _, ext := range exts {
			words = append(words, v+"."+ext)
		}
	}
	return dedup(words)
}

// domainVariations permutes the name components.
func domainVariations(parts domainParts) []string {
	var out []string
	sub, domain := parts.Subdomain, parts.Domain

	if sub != "" && domain != "" {
		out = append(out,
			domain+"."+sub,
			sub+"."+domain,
			sub+domain,
			domain+sub,
			sub+"_"+domain,
			domain+"_"+sub,
		)
	}

	for _, pattern := range []string{"backup", "bak", "old", "temp"} {
		out = append(out,
			pattern+domain,
			domain+pattern,
			pattern+"_"+domain,
			domain+"_"+pattern,
		)
	}

	// Composite subdomains like "app-portal" carry their own tokens.
	if sub != "" {
		for _, sep := range []string{"-", "_", "."} {
			if strings.Contains(sub, sep) {
				pieces := strings.SplitN(sub, sep, 2)
				a, b := pieces[0], pieces[1]
				out = append(out,
					a+"."+b, b+"."+a,
					a+"_"+b, b+"_"+a,
					a+"-"+b, b+"-"+a,
					a+b, b+a,
					a, b,
				)
				break
			}
		}
	}

	out = append(out, domain)
	if sub != "" {
		out = append(out, sub)
	}
	if parts.Suffix != "" {
		out = append(out, domain+"."+parts.Suffix)
	}

	filtered := out[:0]
	for _, v := range out {
		if v != "" {
			filtered = append(filtered, v)
		}
	}
	return dedup(filtered)
}

// domainPathTokens returns the raw name components used as directory
// candidates (subdomain labels, bare domain, domain with suffix).
func domainPathTokens(u *url.URL) []string {
	parts := splitHost(u.Host)
	if parts.Domain == "" {
		return nil
	}

	var tokens []string
	if parts.Subdomain != "" {
		tokens = append(tokens, strings.Split(parts.Subdomain, ".")...)
	}
	tokens = append(tokens, parts.Domain)
	if parts.Suffix != "" {
		tokens = append(tokens, parts.Domain+"."+parts.Suffix)
	}
	return dedup(tokens)
}
