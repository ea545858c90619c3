package probe

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

// DNS classes reported by Diagnose.
const (
	DNSResolves          = "RESOLVES"
	DNSNoARecord         = "NO_A_RECORD"
	DNSNXDomain          = "NXDOMAIN"
	DNSServfailOrTimeout = "SERVFAIL_or_TIMEOUT"
	DNSInvalidName       = "INVALID_NAME"
	DNSLiteralIP         = "LITERAL_IP"
)

type DNSStatus struct {
	Host          string
	IPs           []net.IP
	HasNS         bool
	Class         string
	ResolverError string
}

// Resolver is the subset of *net.Resolver used for diagnosis.
type Resolver interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
	LookupNS(ctx context.Context, name string) ([]*net.NS, error)
}

// DNSDiagnoser explains a failed probe by classifying how the target resolves.
// It never affects failure counting; its output only enriches log lines.
type DNSDiagnoser struct {
	Resolver Resolver
	Timeout  time.Duration
}

func NewDNSDiagnoser() *DNSDiagnoser {
	return &DNSDiagnoser{Resolver: &net.Resolver{}, Timeout: 3 * time.Second}
}

func (d *DNSDiagnoser) Diagnose(ctx context.Context, host string) DNSStatus {
	s := DNSStatus{Host: strings.TrimSpace(host)}
	if ValidateTarget(s.Host) != nil {
		s.Class = DNSInvalidName
		return s
	}
	if ip := net.ParseIP(s.Host); ip != nil {
		s.IPs = []net.IP{ip}
		s.Class = DNSLiteralIP
		return s
	}

	ctx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	ips, err := d.Resolver.LookupIP(ctx, "ip", s.Host)
	if err == nil && len(ips) > 0 {
		s.IPs = ips
		s.Class = DNSResolves
		return s
	}
	if err != nil {
		s.ResolverError = err.Error()
		var de *net.DNSError
		if errors.As(err, &de) {
			if de.IsNotFound {
				s.Class = DNSNXDomain
			} else if de.IsTemporary || de.Timeout() {
				s.Class = DNSServfailOrTimeout
			}
		}
	}

	// Name servers but no address: the zone exists, the record does not.
	if ns, err := d.Resolver.LookupNS(ctx, s.Host); err == nil && len(ns) > 0 {
		s.HasNS = true
		if s.Class == "" || s.Class == DNSNXDomain {
			s.Class = DNSNoARecord
		}
	}

	if s.Class == "" {
		if s.ResolverError != "" {
			s.Class = DNSServfailOrTimeout
		} else {
			s.Class = DNSNXDomain
		}
	}
	return s
}
