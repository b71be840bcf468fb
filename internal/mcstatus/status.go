package mcstatus

// Player is one entry of the sample list returned by a status query.
type Player struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Players contains the online and max player counts plus the advertised
// sample. The sample is exactly that: servers may return a strict subset
// of the online players, or none at all.
type Players struct {
	Online int      `json:"online"`
	Max    int      `json:"max"`
	Sample []Player `json:"sample"`
}

// Version contains the server software name and protocol number.
type Version struct {
	Name     string `json:"name"`
	Protocol int    `json:"protocol"`
}

// Status contains all information available from a server list ping.
type Status struct {
	Players Players `json:"players"`
	Version Version `json:"version"`
}
