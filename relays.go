// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ticket

import (
	"net/url"
	"strings"
)

// Relay definitions
var (
	RelayNorthAmerica = Relay{
		Name:   "use1-1",
		Region: "North America",
		Hosts: []string{
			"use1-1.relay.iroh.network",
			"use1-1.derp.iroh.network",
		},
	}
	RelayEurope = Relay{
		Name:   "euw1-1",
		Region: "Europe",
		Hosts: []string{
			"euw1-1.relay.iroh.network",
			"euw1-1.derp.iroh.network",
		},
	}
	RelayAsiaPacific = Relay{
		Name:   "aps1-1",
		Region: "Asia-Pacific",
		Hosts: []string{
			"aps1-1.relay.iroh.network",
			"aps1-1.derp.iroh.network",
		},
	}

	RelayUnknown = Relay{
		Name: "unknown",
	} // RelayUnknown is used as a return value for lookup functions when a relay isn't found
)

// List of public relays for use in lookup functions
var relays = []Relay{
	RelayNorthAmerica,
	RelayEurope,
	RelayAsiaPacific,
}

// RelayByName returns a public relay by name
func RelayByName(name string) Relay {
	for _, relay := range relays {
		if relay.Name == name {
			return relay
		}
	}
	return RelayUnknown
}

// RelayByUrl returns the public relay serving a ticket's relay URL. Host
// matching ignores case and the trailing dot of a fully qualified name
func RelayByUrl(relayUrl string) Relay {
	u, err := url.Parse(relayUrl)
	if err != nil {
		return RelayUnknown
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return RelayUnknown
	}
	for _, relay := range relays {
		for _, tmpHost := range relay.Hosts {
			if host == tmpHost {
				return relay
			}
		}
	}
	return RelayUnknown
}

// Relay represents a public relay server that nodes can be reached through
type Relay struct {
	Name   string
	Region string
	Hosts  []string
}

func (r Relay) String() string {
	return r.Name
}

// Known returns false for RelayUnknown
func (r Relay) Known() bool {
	return len(r.Hosts) > 0
}
