// property/permission.go
package property

// Permission encodes value access in two bits: bit1 = read allowed,
// bit0 = write allowed.
type Permission uint8

const (
	PermNone      Permission = 0b00
	PermWriteOnly Permission = 0b01
	PermReadOnly  Permission = 0b10
	PermReadWrite Permission = 0b11
)

const (
	permissionBits = 2
	permissionMask = 1<<permissionBits - 1
)

var permissionNames = [4]string{
	"none", "write-only", "read-only", "read-write",
}

// PermissionFromRaw converts a raw byte to a Permission. Only the low two
// bits are used, so every input maps to a valid code.
func PermissionFromRaw(raw byte) Permission {
	return Permission(raw & permissionMask)
}

func (p Permission) CanRead() bool  { return p&0b10 != 0 }
func (p Permission) CanWrite() bool { return p&0b01 != 0 }

func (p Permission) String() string {
	return permissionNames[p&permissionMask]
}
