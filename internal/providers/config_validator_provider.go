package providers

import (
	"emojicounter/internal/structures"
	"fmt"
	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %s", v.Errors.Error())
	}
	if c.conf.Persistence.LegacyFile != "" && c.conf.Persistence.LegacyGuild <= 0 {
		return fmt.Errorf("invalid configuration: persistence.legacyGuild is required with persistence.legacyFile")
	}
	return nil
}
