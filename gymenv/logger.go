package gymenv

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "gymenv")
