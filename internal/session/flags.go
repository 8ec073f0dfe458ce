// SPDX-License-Identifier: MIT

package session

import "github.com/olmapi/olmapi/internal/mapi"

// InitFlags is the typed form of the MAPIInitialize flag word.
type InitFlags struct {
	MultithreadNotifications bool
	NTService                bool
	NoCoInit                 bool
}

// Bits packs the flags into their wire representation.
func (f InitFlags) Bits() uint32 {
	var bits uint32
	if f.MultithreadNotifications {
		bits |= mapi.MAPI_MULTITHREAD_NOTIFICATIONS
	}
	if f.NTService {
		bits |= mapi.MAPI_NT_SERVICE
	}
	if f.NoCoInit {
		bits |= mapi.MAPI_NO_COINIT
	}
	return bits
}

// LogonFlags is the typed form of the MAPILogonEx flag word.
type LogonFlags struct {
	AllowOthers     bool
	BGSession       bool
	ExplicitProfile bool
	Extended        bool
	ForceDownload   bool
	LogonUI         bool
	NewSession      bool
	NoMail          bool
	NTService       bool
	ServiceUIAlways bool
	TimeoutShort    bool
	Unicode         bool
	UseDefault      bool
}

// Bits packs the flags into their wire representation.
func (f LogonFlags) Bits() uint32 {
	var bits uint32
	if f.AllowOthers {
		bits |= mapi.MAPI_ALLOW_OTHERS
	}
	if f.BGSession {
		bits |= mapi.MAPI_BG_SESSION
	}
	if f.ExplicitProfile {
		bits |= mapi.MAPI_EXPLICIT_PROFILE
	}
	if f.Extended {
		bits |= mapi.MAPI_EXTENDED
	}
	if f.ForceDownload {
		bits |= mapi.MAPI_FORCE_DOWNLOAD
	}
	if f.LogonUI {
		bits |= mapi.MAPI_LOGON_UI
	}
	if f.NewSession {
		bits |= mapi.MAPI_NEW_SESSION
	}
	if f.NoMail {
		bits |= mapi.MAPI_NO_MAIL
	}
	if f.NTService {
		bits |= mapi.MAPI_NT_SERVICE
	}
	if f.ServiceUIAlways {
		bits |= mapi.MAPI_SERVICE_UI_ALWAYS
	}
	if f.TimeoutShort {
		bits |= mapi.MAPI_TIMEOUT_SHORT
	}
	if f.Unicode {
		bits |= mapi.MAPI_UNICODE
	}
	if f.UseDefault {
		bits |= mapi.MAPI_USE_DEFAULT
	}
	return bits
}
