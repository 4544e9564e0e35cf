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

package wire

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	IpVersion4 = 0
	IpVersion6 = 1
)

// SocketAddr is a decoded socket address. IP holds 4 bytes for IPv4 and 16
// bytes for IPv6
type SocketAddr struct {
	IP   []byte
	Port uint32
}

func (a SocketAddr) IsIPv6() bool {
	return len(a.IP) == 16
}

// String renders the address as "a.b.c.d:port" or "[hextets]:port"
func (a SocketAddr) String() string {
	switch len(a.IP) {
	case 4:
		return FormatIPv4([4]byte(a.IP), a.Port)
	case 16:
		return FormatIPv6([16]byte(a.IP), a.Port)
	}
	return fmt.Sprintf("<invalid address %x>:%d", a.IP, a.Port)
}

// ReadSocketAddr consumes a socket address and returns its text form
func (r *Reader) ReadSocketAddr() (string, error) {
	addr, err := r.ReadSocketAddrParts()
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}

// ReadSocketAddrParts consumes a socket address: a varint IP version tag, the
// raw address bytes, and a varint port
func (r *Reader) ReadSocketAddrParts() (SocketAddr, error) {
	start := r.offset
	addr, err := r.readSocketAddr()
	if err != nil {
		r.offset = start
		return SocketAddr{}, err
	}
	return addr, nil
}

func (r *Reader) readSocketAddr() (SocketAddr, error) {
	version, err := r.ReadVarint()
	if err != nil {
		return SocketAddr{}, err
	}
	var ipLen int
	switch version {
	case IpVersion4:
		ipLen = 4
	case IpVersion6:
		ipLen = 16
	default:
		return SocketAddr{}, UnknownIpVersionError{Version: version}
	}
	ip, err := r.ReadFixed(ipLen)
	if err != nil {
		return SocketAddr{}, err
	}
	port, err := r.ReadVarint()
	if err != nil {
		return SocketAddr{}, err
	}
	return SocketAddr{IP: ip, Port: port}, nil
}

// FormatIPv4 renders an IPv4 socket address in dotted decimal form
func FormatIPv4(ip [4]byte, port uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d:%d", ip[0], ip[1], ip[2], ip[3], port)
}

// FormatIPv6 renders an IPv6 socket address as "[addr]:port", where addr uses
// lowercase hextets without leading zeros and the longest run of two or more
// zero hextets is shortened to "::". The first run wins a tie.
func FormatIPv6(ip [16]byte, port uint32) string {
	return "[" + formatHextets(ip) + "]:" + strconv.FormatUint(uint64(port), 10)
}

func formatHextets(ip [16]byte) string {
	var hextets [8]uint16
	for i := range hextets {
		hextets[i] = uint16(ip[2*i])<<8 | uint16(ip[2*i+1])
	}
	runStart, runLen := -1, 0
	for i := 0; i < len(hextets); {
		if hextets[i] != 0 {
			i++
			continue
		}
		j := i
		for j < len(hextets) && hextets[j] == 0 {
			j++
		}
		if j-i > runLen {
			runStart, runLen = i, j-i
		}
		i = j
	}
	if runLen < 2 {
		runStart = -1
	}
	var sb strings.Builder
	for i := 0; i < len(hextets); i++ {
		if i == runStart {
			sb.WriteString("::")
			i += runLen - 1
			continue
		}
		// The "::" already separates the hextet that follows the run
		if i > 0 && i != runStart+runLen {
			sb.WriteByte(':')
		}
		sb.WriteString(strconv.FormatUint(uint64(hextets[i]), 16))
	}
	return sb.String()
}
