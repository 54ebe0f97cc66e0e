package qso

// Version is the release of the qso module.
var Version = "0.3.0"
