package net

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// LinkScheme prefixes share links handed out by a host.
const LinkScheme = "signpad://"

// GetOutgoingIP finds the preferred local IP address for the host to share.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// Offline networks still have a LAN address.
		return getLocalIPFallback()
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

func getLocalIPFallback() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String(), nil
			}
		}
	}
	log.Println("[NET] No suitable local IP found, share link may not work off this machine")
	return "127.0.0.1", nil
}

// ShareLink builds the link a mirror uses to join a host.
func ShareLink(ip string, port int) string {
	return LinkScheme + net.JoinHostPort(ip, strconv.Itoa(port))
}

// ParseLink turns a share link or a bare host:port into the hub's
// websocket URL.
func ParseLink(link string) (string, error) {
	hostport := strings.TrimPrefix(strings.TrimSpace(link), LinkScheme)
	hostport = strings.TrimSuffix(hostport, "/")
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		return "", fmt.Errorf("invalid share link %q: %w", link, err)
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return "", fmt.Errorf("invalid port in share link %q", link)
	}
	u := url.URL{Scheme: "ws", Host: net.JoinHostPort(host, port), Path: "/ws"}
	return u.String(), nil
}
