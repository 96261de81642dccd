package constants

import (
	"fmt"
	"strings"
	"time"
)

// DayOfWeek reprend l'enum Postgres day_of_week (noms français).
type DayOfWeek string

const (
	Lundi    DayOfWeek = "lundi"
	Mardi    DayOfWeek = "mardi"
	Mercredi DayOfWeek = "mercredi"
	Jeudi    DayOfWeek = "jeudi"
	Vendredi DayOfWeek = "vendredi"
	Samedi   DayOfWeek = "samedi"
	Dimanche DayOfWeek = "dimanche"
)

// indexé par time.Weekday (dimanche = 0)
var dayNames = [7]DayOfWeek{Dimanche, Lundi, Mardi, Mercredi, Jeudi, Vendredi, Samedi}

var validDays = map[DayOfWeek]struct{}{
	Lundi: {}, Mardi: {}, Mercredi: {}, Jeudi: {}, Vendredi: {}, Samedi: {}, Dimanche: {},
}

func DayFromWeekday(w time.Weekday) DayOfWeek {
	return dayNames[int(w)%7]
}

func ParseDayOfWeek(s string) (DayOfWeek, error) {
	d := DayOfWeek(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := validDays[d]; !ok {
		return "", fmt.Errorf("jour invalide: %q", s)
	}
	return d, nil
}

func (d DayOfWeek) Valid() bool {
	_, ok := validDays[d]
	return ok
}

func (d DayOfWeek) String() string { return string(d) }

// ParisTZName: toutes les décisions jour/heure du dispatcher se font dans ce
// fuseau, quel que soit le TZ du serveur.
const ParisTZName = "Europe/Paris"

var parisLoc *time.Location

func init() {
	loc, err := time.LoadLocation(ParisTZName)
	if err != nil {
		// tzdata absent du conteneur: on retombe sur CET fixe plutôt que crasher
		loc = time.FixedZone("CET", 1*60*60)
	}
	parisLoc = loc
}

func ParisLocation() *time.Location { return parisLoc }

func NowParis() time.Time { return time.Now().In(parisLoc) }
