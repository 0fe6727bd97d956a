package models

import "time"

// Vote status constants
const (
	StatutEnAttente = "en_attente"
	StatutActive    = "active"
	StatutTerminee  = "terminee"
)

// Request types

type RegisterRequest struct {
	Nom        string `json:"nom"`
	Prenom     string `json:"prenom"`
	Email      string `json:"email"`
	MotDePasse string `json:"mot_de_passe"`
}

type ElecteurLoginRequest struct {
	Email      string `json:"email"`
	MotDePasse string `json:"mot_de_passe"`
}

type AdminLoginRequest struct {
	Username   string `json:"username"`
	MotDePasse string `json:"mot_de_passe"`
}

type CreateVoteRequest struct {
	Titre       string `json:"titre"`
	Description string `json:"description"`
}

type ChangeStatutRequest struct {
	ID     int64  `json:"id"`
	Statut string `json:"statut"`
}

type AddOptionRequest struct {
	VoteID      int64  `json:"vote_id"`
	Libelle     string `json:"libelle"`
	Description string `json:"description"`
	Photo       string `json:"photo"`
}

type DeleteOptionRequest struct {
	ID int64 `json:"id"`
}

type JetonRequest struct {
	ElecteurID int64 `json:"electeur_id"`
	VoteID     int64 `json:"vote_id"`
}

type VoterRequest struct {
	Jeton    string `json:"jeton"`
	OptionID int64  `json:"option_id"`
}

type DecompteRequest struct {
	VoteID int64 `json:"vote_id"`
}

// Response types. Every response carries Success.

type SuccessResponse struct {
	Success bool `json:"success"`
}

type RegisterResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

type ElecteurLoginResponse struct {
	Success    bool     `json:"success"`
	Electeur   Electeur `json:"electeur"`
	CleSession string   `json:"cle_session"`
}

type AdminLoginResponse struct {
	Success  bool   `json:"success"`
	Admin    Admin  `json:"admin"`
	CleAdmin string `json:"cle_admin"`
}

type ElecteursResponse struct {
	Success   bool       `json:"success"`
	Electeurs []Electeur `json:"electeurs"`
}

type VoteResponse struct {
	Success bool  `json:"success"`
	Vote    *Vote `json:"vote"`
}

type VotesResponse struct {
	Success bool   `json:"success"`
	Votes   []Vote `json:"votes"`
}

type OptionResponse struct {
	Success bool   `json:"success"`
	Option  Option `json:"option"`
}

type OptionsResponse struct {
	Success bool     `json:"success"`
	Options []Option `json:"options"`
}

type JetonResponse struct {
	Success bool   `json:"success"`
	Jeton   string `json:"jeton"`
}

type VoterResponse struct {
	Success    bool   `json:"success"`
	BulletinID string `json:"bulletin_id"`
}

type DecompteResponse struct {
	Success        bool       `json:"success"`
	Resultats      []Resultat `json:"resultats"`
	DejaCalcule    bool       `json:"deja_calcule"`
	TotalBulletins int64      `json:"total_bulletins"`
	Gagnants       []int64    `json:"gagnants"` // every option sharing the top count
}

type ResultatsResponse struct {
	Success   bool       `json:"success"`
	Resultats []Resultat `json:"resultats"`
}

type StatistiquesResponse struct {
	Success      bool         `json:"success"`
	Statistiques Statistiques `json:"statistiques"`
}

type BulletinsResponse struct {
	Success   bool       `json:"success"`
	Bulletins []Bulletin `json:"bulletins"`
}

type CountResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}

// Domain types

type Electeur struct {
	ID              int64     `json:"id"`
	Nom             string    `json:"nom"`
	Prenom          string    `json:"prenom"`
	Email           string    `json:"email"`
	MotDePasse      string    `json:"-"` // bcrypt hash, never exposed
	DateInscription time.Time `json:"date_inscription"`
}

type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	MotDePasse   string    `json:"-"` // bcrypt hash, never exposed
	DateCreation time.Time `json:"date_creation"`
}

type Vote struct {
	ID            int64      `json:"id"`
	Titre         string     `json:"titre"`
	Description   string     `json:"description"`
	Statut        string     `json:"statut"`
	DateCreation  time.Time  `json:"date_creation"`
	DateOuverture *time.Time `json:"date_ouverture,omitempty"`
	DateCloture   *time.Time `json:"date_cloture,omitempty"`
}

type Option struct {
	ID          int64     `json:"id"`
	VoteID      int64     `json:"vote_id"`
	Libelle     string    `json:"libelle"`
	Description string    `json:"description"`
	Photo       string    `json:"photo,omitempty"`
	DateAjout   time.Time `json:"date_ajout"`
	VoteTitre   string    `json:"vote_titre,omitempty"`
}

// Bulletin is an anonymous ballot. It has no elector or jeton field on purpose.
type Bulletin struct {
	ID           string    `json:"id"`
	VoteID       int64     `json:"vote_id"`
	OptionID     int64     `json:"option_id,omitempty"` // omitted from public listings
	DateBulletin time.Time `json:"date_bulletin"`
}

type Resultat struct {
	VoteID          int64     `json:"vote_id"`
	OptionID        int64     `json:"option_id"`
	Libelle         string    `json:"libelle"`
	NombreBulletins int64     `json:"nombre_bulletins"`
	DateDecompte    time.Time `json:"date_decompte"`
}

type Statistiques struct {
	TotalElecteurs    int64   `json:"total_electeurs"`
	JetonsDistribues  int64   `json:"jetons_distribues"`
	JetonsUtilises    int64   `json:"jetons_utilises"`
	TotalOptions      int64   `json:"total_options"`
	TotalBulletins    int64   `json:"total_bulletins"`
	TotalVotes        int64   `json:"total_votes"`
	TauxParticipation float64 `json:"taux_participation"`
}

// Error response

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}
