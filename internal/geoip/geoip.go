// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip provides IP-to-country and IP-to-city lookup using
// MaxMind GeoLite2 databases.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"
)

// privateCIDRs contains parsed CIDR blocks for private IP ranges.
// Initialized once at package load time for efficiency.
var privateCIDRs []*net.IPNet

func init() {
	privateBlocks := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"fc00::/7",  // IPv6 unique local
		"fe80::/10", // IPv6 link-local
	}

	for _, block := range privateBlocks {
		_, cidr, err := net.ParseCIDR(block)
		if err == nil {
			privateCIDRs = append(privateCIDRs, cidr)
		}
	}
}

// database wraps one MaxMind reader with reload-on-change semantics.
type database struct {
	db      *maxminddb.Reader
	path    string
	modTime time.Time
	enabled bool
}

// Lookup resolves visitor IPs against the GeoLite2-Country database
// and, when configured, the GeoLite2-City database. Either database
// may be absent; lookups degrade to empty strings.
type Lookup struct {
	country     database
	city        database
	initialized bool
	mu          sync.RWMutex
}

// countryRecord matches the GeoLite2-Country database structure.
type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// cityRecord matches the GeoLite2-City database structure.
type cityRecord struct {
	City struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"city"`
}

// NewLookup creates a new GeoIP lookup instance.
func NewLookup() *Lookup {
	return &Lookup{}
}

// Init loads the country database and, if cityPath is non-empty, the
// city database. Empty paths disable the corresponding lookup
// (graceful degradation).
func (g *Lookup) Init(countryPath, cityPath string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.initialized = true
	g.country.path = countryPath
	g.city.path = cityPath

	if err := g.country.load(); err != nil {
		return err
	}
	return g.city.load()
}

// load opens or reloads one database. Caller must hold the lookup's
// write lock.
func (d *database) load() error {
	if d.path == "" {
		d.enabled = false
		return nil
	}

	info, err := os.Stat(d.path)
	if err != nil {
		d.enabled = false
		if os.IsNotExist(err) {
			return fmt.Errorf("GeoIP database not found: %s", d.path)
		}
		return fmt.Errorf("GeoIP database stat error: %w", err)
	}

	// Skip reload if not modified
	if d.db != nil && info.ModTime().Equal(d.modTime) {
		return nil
	}

	if d.db != nil {
		_ = d.db.Close()
		d.db = nil
	}

	db, err := maxminddb.Open(d.path)
	if err != nil {
		d.enabled = false
		return fmt.Errorf("failed to open GeoIP database: %w", err)
	}

	d.db = db
	d.modTime = info.ModTime()
	d.enabled = true
	return nil
}

// Reload reloads both databases if they have been updated.
// Safe to call periodically (e.g., from a cron job).
func (g *Lookup) Reload() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.country.load(); err != nil {
		return err
	}
	return g.city.load()
}

// LookupCountry returns the 2-letter ISO country code for an IP
// address. Returns "LOCAL" for private and loopback IPs, and ""
// when the database is unavailable or the IP cannot be resolved.
func (g *Lookup) LookupCountry(ip string) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.initialized {
		return ""
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return ""
	}
	if isPrivateIP(parsedIP) || parsedIP.IsLoopback() {
		return "LOCAL"
	}
	if !g.country.enabled || g.country.db == nil {
		return ""
	}

	var record countryRecord
	if err := g.country.db.Lookup(parsedIP, &record); err != nil {
		return ""
	}
	return record.Country.ISOCode
}

// LookupCity returns the English city name for an IP address, or ""
// when the city database is absent or the IP cannot be resolved.
// Private and loopback IPs have no city.
func (g *Lookup) LookupCity(ip string) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.initialized {
		return ""
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil || isPrivateIP(parsedIP) || parsedIP.IsLoopback() {
		return ""
	}
	if !g.city.enabled || g.city.db == nil {
		return ""
	}

	var record cityRecord
	if err := g.city.db.Lookup(parsedIP, &record); err != nil {
		return ""
	}
	return record.City.Names["en"]
}

// IsEnabled returns whether country lookups are available.
func (g *Lookup) IsEnabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.country.enabled
}

// Close closes both databases.
func (g *Lookup) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var err error
	if g.country.db != nil {
		err = g.country.db.Close()
		g.country.db = nil
		g.country.enabled = false
	}
	if g.city.db != nil {
		if cerr := g.city.db.Close(); err == nil {
			err = cerr
		}
		g.city.db = nil
		g.city.enabled = false
	}
	return err
}

// isPrivateIP checks if an IP address is in a private range.
func isPrivateIP(ip net.IP) bool {
	for _, cidr := range privateCIDRs {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

// CountryName returns the full country name for a 2-letter country code.
func CountryName(code string) string {
	countries := map[string]string{
		"LOCAL": "Local Network",
		"TR":    "Turkey",
		"US":    "United States",
		"GB":    "United Kingdom",
		"DE":    "Germany",
		"FR":    "France",
		"ES":    "Spain",
		"IT":    "Italy",
		"NL":    "Netherlands",
		"BE":    "Belgium",
		"AT":    "Austria",
		"CH":    "Switzerland",
		"SE":    "Sweden",
		"NO":    "Norway",
		"DK":    "Denmark",
		"RU":    "Russia",
		"UA":    "Ukraine",
		"CA":    "Canada",
		"BR":    "Brazil",
		"AU":    "Australia",
		"JP":    "Japan",
		"CN":    "China",
		"KR":    "South Korea",
		"IN":    "India",
		"SG":    "Singapore",
		"IL":    "Israel",
		"AE":    "United Arab Emirates",
		"SA":    "Saudi Arabia",
		"QA":    "Qatar",
		"KW":    "Kuwait",
		"AZ":    "Azerbaijan",
		"GR":    "Greece",
		"PT":    "Portugal",
		"IE":    "Ireland",
		"RO":    "Romania",
		"BG":    "Bulgaria",
	}

	if name, ok := countries[code]; ok {
		return name
	}
	if code == "" {
		return "Unknown"
	}
	return code
}
