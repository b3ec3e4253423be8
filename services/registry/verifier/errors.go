package verifier

type errUnitMismatch struct {
	got  string
	want string
}

func (e errUnitMismatch) Error() string {
	return "measurement unit '" + e.got + "' does not match specification unit '" + e.want + "'"
}
