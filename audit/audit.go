package audit

import (
	"net"
	"time"

	"github.com/golang/glog"

	h "github.com/microcosm-cc/registry/helpers"
)

// Internal single-char indication of the auditable session actions. Logins
// are recorded by the login flow, which lives outside this service.
const logout = `O`

// Logout records a session being dropped
func Logout(username string, seen time.Time, ipAddress net.IP) {
	recordAction(username, seen, ipAddress, logout)
}

// recordAction actually appends to the audit log
func recordAction(
	username string,
	seen time.Time,
	ipAddress net.IP,
	action string,
) {

	if ipAddress == nil {
		if glog.V(2) {
			glog.Infof("IP Address was nil for session of %s", username)
		}
		return
	}

	db, err := h.GetConnection()
	if err != nil {
		glog.Error(err)
		return
	}

	_, err = db.Exec(`INSERT INTO session_audit (
    username, seen, action, ip
 ) VALUES (
    $1, $2, $3, $4
 )`,
		username,
		seen,
		action,
		ipAddress.String(),
	)
	if err != nil {
		glog.Error(err)
		return
	}
}
