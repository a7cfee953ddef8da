package enums

import "fmt"

// Governorate is a Yemeni shipping region. Checkout only accepts the fixed
// set below; free-text regions are rejected before any order is written.
type Governorate string

const (
	GovernorateSanaa      Governorate = "صنعاء"
	GovernorateHadhramaut Governorate = "حضرموت"
	GovernorateTaiz       Governorate = "تعز"
	GovernorateAden       Governorate = "عدن"
	GovernorateHodeidah   Governorate = "الحديدة"
	GovernorateIbb        Governorate = "إب"
	GovernorateDhamar     Governorate = "ذمار"
	GovernorateSaada      Governorate = "صعدة"
	GovernorateAlBayda    Governorate = "البيضاء"
	GovernorateShabwah    Governorate = "شبوة"
	GovernorateAlMahrah   Governorate = "المهرة"
	GovernorateLahij      Governorate = "لحج"
	GovernorateAlMahwit   Governorate = "المحويت"
	GovernorateRaymah     Governorate = "ريمة"
	GovernorateAlDhale    Governorate = "الضالع"
	GovernorateHajjah     Governorate = "حجة"
	GovernorateAbyan      Governorate = "أبين"
)

var validGovernorates = []Governorate{
	GovernorateSanaa,
	GovernorateHadhramaut,
	GovernorateTaiz,
	GovernorateAden,
	GovernorateHodeidah,
	GovernorateIbb,
	GovernorateDhamar,
	GovernorateSaada,
	GovernorateAlBayda,
	GovernorateShabwah,
	GovernorateAlMahrah,
	GovernorateLahij,
	GovernorateAlMahwit,
	GovernorateRaymah,
	GovernorateAlDhale,
	GovernorateHajjah,
	GovernorateAbyan,
}

// String implements fmt.Stringer.
func (g Governorate) String() string {
	return string(g)
}

// IsValid reports whether the value is a known Governorate.
func (g Governorate) IsValid() bool {
	for _, candidate := range validGovernorates {
		if candidate == g {
			return true
		}
	}
	return false
}

// Governorates returns the accepted region list in display order.
func Governorates() []Governorate {
	out := make([]Governorate, len(validGovernorates))
	copy(out, validGovernorates)
	return out
}

// ParseGovernorate converts raw input into a Governorate.
func ParseGovernorate(value string) (Governorate, error) {
	for _, candidate := range validGovernorates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid governorate %q", value)
}
