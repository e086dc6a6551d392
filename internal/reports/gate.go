package reports

// Gate decides who may file and who may read reports. Both checks fail closed
// with ErrUnauthorized.
type Gate struct{}

// AuthorizeFiling admits any authenticated caller.
func (Gate) AuthorizeFiling(c *Caller) error {
	if c == nil || c.ID == "" {
		return ErrUnauthorized
	}
	return nil
}

// AuthorizeListing admits reviewers and anyone ranked above them.
func (g Gate) AuthorizeListing(c *Caller) error {
	if err := g.AuthorizeFiling(c); err != nil {
		return err
	}
	if !c.Role.AtLeast(RoleReviewer) {
		return ErrUnauthorized
	}
	return nil
}
