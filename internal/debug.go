package internal

import (
	"fmt"
	"os"
	"os/user"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/sirupsen/logrus"
)

var sensitiveRegex = regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)

func ShowVersion(logger *logrus.Logger) {
	logger.WithField("version", versioninfo.Short()).Info("Starting edge-blur")
}

// EnvironmentVars logs the environment at debug level, masking anything
// that looks like a credential.
func EnvironmentVars(logger *logrus.Logger) {
	if !logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	environ := os.Environ()
	sort.Slice(environ, func(i, j int) bool {
		keyI := strings.SplitN(environ[i], "=", 2)[0]
		keyJ := strings.SplitN(environ[j], "=", 2)[0]
		return keyI < keyJ
	})

	fields := logrus.Fields{}
	for _, entry := range environ {
		kv := strings.SplitN(entry, "=", 2)
		if len(kv) != 2 {
			continue
		}
		fields[kv[0]] = maskValue(kv[0], kv[1])
	}
	logger.WithFields(fields).Debug("Environment variables")
}

func UserInfo(logger *logrus.Logger) {
	if !logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	fields := logrus.Fields{"pid": os.Getpid()}
	currentUser, err := user.Current()
	if err != nil {
		logger.WithError(err).Debug("Error getting current user")
	} else {
		fields["user"] = fmt.Sprintf("uid=%s(%s) gid=%s", currentUser.Uid, currentUser.Username, currentUser.Gid)
	}

	groups, err := os.Getgroups()
	if err != nil {
		logger.WithError(err).Debug("Error getting groups")
	} else {
		groupNames := make([]string, 0, len(groups))
		for _, gid := range groups {
			group, err := user.LookupGroupId(strconv.Itoa(gid))
			if err != nil {
				groupNames = append(groupNames, strconv.Itoa(gid)) // Append ID if name lookup fails
			} else {
				groupNames = append(groupNames, fmt.Sprintf("%s(%s)", group.Name, group.Gid))
			}
		}
		fields["groups"] = groupNames
	}
	logger.WithFields(fields).Debug("Process info")
}

func maskValue(key, value string) string {
	if sensitiveRegex.MatchString(key) {
		return "********"
	}
	return value
}
