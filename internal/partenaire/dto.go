package partenaire

// LoginRequest contient les identifiants de connexion (numdist + mot de passe).
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type ChangerMotDePasseRequest struct {
	AncienMotDePasse  string `json:"ancienMotDePasse"`
	NouveauMotDePasse string `json:"nouveauMotDePasse"`
}

// ResumePartenaireDTO expose les données publiques d'un partenaire.
type ResumePartenaireDTO struct {
	ID        uint   `json:"id"`
	Numdist   string `json:"numdist"`
	Nomdist   string `json:"nomdist"`
	IsPartner bool   `json:"isPartner"`
	Actif     bool   `json:"actif"`
}

func VersResumeDTO(p Partenaire) ResumePartenaireDTO {
	return ResumePartenaireDTO{
		ID:        p.ID,
		Numdist:   p.Numdist,
		Nomdist:   p.Nomdist,
		IsPartner: p.IsPartner,
		Actif:     p.Actif,
	}
}
