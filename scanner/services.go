package scanner

// PortServices maps a small set of well-known TCP ports to their
// conventional service name. Unknown ports resolve to "". This is the
// full extent of service identification the SYN stage performs — it
// never probes the application layer for a banner or version string.
var PortServices = map[uint16]string{
	20:    "ftp-data",
	21:    "ftp",
	22:    "ssh",
	23:    "telnet",
	25:    "smtp",
	53:    "dns",
	67:    "dhcp",
	68:    "dhcp",
	69:    "tftp",
	80:    "http",
	110:   "pop3",
	111:   "rpcbind",
	123:   "ntp",
	135:   "msrpc",
	139:   "netbios-ssn",
	143:   "imap",
	161:   "snmp",
	389:   "ldap",
	443:   "https",
	445:   "microsoft-ds",
	514:   "syslog",
	515:   "printer",
	548:   "afp",
	587:   "submission",
	631:   "ipp",
	636:   "ldaps",
	993:   "imaps",
	995:   "pop3s",
	1433:  "ms-sql-s",
	1521:  "oracle",
	1723:  "pptp",
	2049:  "nfs",
	3000:  "dev-http",
	3128:  "squid-http",
	3306:  "mysql",
	3389:  "ms-wbt-server",
	5000:  "upnp",
	5432:  "postgresql",
	5900:  "vnc",
	6379:  "redis",
	8000:  "http-alt",
	8080:  "http-proxy",
	8443:  "https-alt",
	9000:  "cslistener",
	9090:  "websm",
	9200:  "elasticsearch",
	27017: "mongodb",
}

// lookupService returns the conventional service name for port, or ""
// if it is not in PortServices.
func lookupService(port uint16) string {
	return PortServices[port]
}
