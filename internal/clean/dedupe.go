package clean

func (c *cleaner) deduplicate() error {
	n := c.t.DropDuplicates()
	c.sum.DuplicatesRemoved = n
	c.log.Info().Int("removed", n).Msg("duplicates removed")
	return nil
}

func (c *cleaner) finalDeduplicate() error {
	n := c.t.DropDuplicates()
	c.sum.FinalDuplicatesRemoved = n
	if n > 0 {
		c.log.Info().Int("removed", n).Msg("rows collapsed into duplicates by cleaning removed")
	}
	return nil
}
