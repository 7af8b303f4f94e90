//go:build windows

package probe

import (
	"fmt"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// hardwareIdentifier concatenates the cryptography MachineGuid with the
// system volume serial number. Both survive reboots and reinstalls of
// the program, so the derived key stays stable on a given machine.
func hardwareIdentifier() string {
	guid := machineGUID()
	serial := volumeSerial()
	if guid == "" && serial == "" {
		return ""
	}
	return guid + serial
}

func machineGUID() string {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`SOFTWARE\Microsoft\Cryptography`, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return ""
	}
	defer k.Close()

	guid, _, err := k.GetStringValue("MachineGuid")
	if err != nil {
		return ""
	}
	return guid
}

func volumeSerial() string {
	root, err := windows.UTF16PtrFromString(`C:\`)
	if err != nil {
		return ""
	}
	var serial uint32
	err = windows.GetVolumeInformation(root, nil, 0, &serial, nil, nil, nil, 0)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%08X", serial)
}
