package model

// Districts is the fixed set of Tamil Nadu administrative districts the
// service recognizes. Donor profiles and blood requests must reference one
// of these values.
var Districts = []string{
	"Ariyalur", "Chennai", "Coimbatore", "Cuddalore", "Dharmapuri",
	"Dindigul", "Erode", "Kanchipuram", "Kanyakumari", "Karur",
	"Krishnagiri", "Madurai", "Nagapattinam", "Namakkal", "Nilgiris",
	"Perambalur", "Pudukkottai", "Ramanathapuram", "Salem", "Sivaganga",
	"Thanjavur", "Theni", "Thoothukudi", "Tiruchirappalli", "Tirunelveli",
	"Tirupur", "Tiruvallur", "Tiruvannamalai", "Tiruvarur", "Vellore",
	"Viluppuram", "Virudhunagar",
}

// ValidDistrict reports whether s is a recognized district.
func ValidDistrict(s string) bool {
	for _, d := range Districts {
		if s == d {
			return true
		}
	}
	return false
}
