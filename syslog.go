package drlogger

import "strconv"

// SyslogFacility is a syslog facility code (RFC 3164)
type SyslogFacility int

const (
	FacilityKern     SyslogFacility = 0
	FacilityUser     SyslogFacility = 1
	FacilityMail     SyslogFacility = 2
	FacilityDaemon   SyslogFacility = 3
	FacilityAuth     SyslogFacility = 4
	FacilitySyslog   SyslogFacility = 5
	FacilityLPR      SyslogFacility = 6
	FacilityNews     SyslogFacility = 7
	FacilityUUCP     SyslogFacility = 8
	FacilityCron     SyslogFacility = 9
	FacilityAuthPriv SyslogFacility = 10
	FacilityFTP      SyslogFacility = 11
	FacilityLocal0   SyslogFacility = 16
	FacilityLocal1   SyslogFacility = 17
	FacilityLocal2   SyslogFacility = 18
	FacilityLocal3   SyslogFacility = 19
	FacilityLocal4   SyslogFacility = 20
	FacilityLocal5   SyslogFacility = 21
	FacilityLocal6   SyslogFacility = 22
	FacilityLocal7   SyslogFacility = 23
)

// SyslogListenerName is the name reported by syslog listeners
const SyslogListenerName = "SyslogListener"

func (f SyslogFacility) valid() bool {
	return (f >= FacilityKern && f <= FacilityFTP) || (f >= FacilityLocal0 && f <= FacilityLocal7)
}

func (f SyslogFacility) String() string {
	switch f {
	case FacilityKern:
		return "kern"
	case FacilityUser:
		return "user"
	case FacilityMail:
		return "mail"
	case FacilityDaemon:
		return "daemon"
	case FacilityAuth:
		return "auth"
	case FacilitySyslog:
		return "syslog"
	case FacilityLPR:
		return "lpr"
	case FacilityNews:
		return "news"
	case FacilityUUCP:
		return "uucp"
	case FacilityCron:
		return "cron"
	case FacilityAuthPriv:
		return "authpriv"
	case FacilityFTP:
		return "ftp"
	}
	if f >= FacilityLocal0 && f <= FacilityLocal7 {
		return "local" + strconv.Itoa(int(f-FacilityLocal0))
	}
	return "facility(" + strconv.Itoa(int(f)) + ")"
}

// syslogMessage renders "tag: message" followed by the error detail
func syslogMessage(r Record) string {
	buf := prepareMessage(make([]byte, 0, len(r.Tag)+len(r.Message)+8), r.Tag, r.Message, r.TraceID, r.Err)
	return string(buf[:len(buf)-1])
}
