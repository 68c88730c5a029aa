package helpers

import (
	"regexp"
	"strings"
)

var (
	scopedPackagePattern = regexp.MustCompile(`^(?:@([^/]+?)[/])?([^/]+?)$`)
	specialCharacters    = regexp.MustCompile(`[~'!()*]`)

	blacklistedNames = map[string]bool{
		"node_modules": true,
		"favicon.ico":  true,
	}

	// Node core modules. A package may not share a name with one of these.
	builtinNames = map[string]bool{
		"assert": true, "buffer": true, "child_process": true, "cluster": true,
		"console": true, "constants": true, "crypto": true, "dgram": true,
		"dns": true, "domain": true, "events": true, "fs": true, "http": true,
		"https": true, "module": true, "net": true, "os": true, "path": true,
		"punycode": true, "querystring": true, "readline": true, "repl": true,
		"stream": true, "string_decoder": true, "sys": true, "timers": true,
		"tls": true, "tty": true, "url": true, "util": true, "vm": true,
		"zlib": true,
	}
)

// PackageNameValidity is the outcome of ValidatePackageName. Errors make a
// name unusable for any package, warnings make it unusable for new packages.
type PackageNameValidity struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// ValidatePackageName checks name against the registry naming rules. A name is
// only Valid when it has neither errors nor warnings.
func ValidatePackageName(name string) PackageNameValidity {
	var v PackageNameValidity

	if name == "" {
		v.Errors = append(v.Errors, "name length must be greater than zero")
		return v
	}

	if strings.HasPrefix(name, ".") {
		v.Errors = append(v.Errors, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		v.Errors = append(v.Errors, "name cannot start with an underscore")
	}
	if strings.TrimSpace(name) != name {
		v.Errors = append(v.Errors, "name cannot contain leading or trailing spaces")
	}
	if blacklistedNames[strings.ToLower(name)] {
		v.Errors = append(v.Errors, name+" is a blacklisted name")
	}

	if builtinNames[strings.ToLower(name)] {
		v.Warnings = append(v.Warnings, name+" is a core module name")
	}
	if len(name) > MaxPackageNameLength {
		v.Warnings = append(v.Warnings, "name can no longer contain more than 214 characters")
	}
	if strings.ToLower(name) != name {
		v.Warnings = append(v.Warnings, "name can no longer contain capital letters")
	}

	segments := strings.Split(name, "/")
	if specialCharacters.MatchString(segments[len(segments)-1]) {
		v.Warnings = append(v.Warnings, `name can no longer contain special characters ("~\'!()*")`)
	}

	if !isURLSafe(name) {
		ok := false
		if m := scopedPackagePattern.FindStringSubmatch(name); m != nil && m[1] != "" {
			ok = isURLSafe(m[1]) && isURLSafe(m[2])
		}
		if !ok {
			v.Errors = append(v.Errors, "name can only contain URL-friendly characters")
		}
	}

	v.Valid = len(v.Errors) == 0 && len(v.Warnings) == 0
	return v
}

// isURLSafe reports whether s survives URI component encoding unchanged
func isURLSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case strings.IndexByte("-_.!~*'()", c) >= 0:
		default:
			return false
		}
	}
	return true
}
