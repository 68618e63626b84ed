package mongodb

import (
	"time"

	"github.com/aden91/tidar-web-app/internal/domain"
)

type addressDocument struct {
	Province    *string `bson:"province"`
	City        *string `bson:"city"`
	District    *string `bson:"district"`
	Subdistrict *string `bson:"subdistrict"`
	Detail      *string `bson:"detail"`
}

// userDocument is the stored shape of domain.User. Optional fields have no
// omitempty so absent values are persisted as explicit nulls.
type userDocument struct {
	UID        string          `bson:"_id"`
	Name       *string         `bson:"name"`
	Email      *string         `bson:"email"`
	Phone      *string         `bson:"phone"`
	Birthplace *string         `bson:"birthplace"`
	Birthdate  *string         `bson:"birthdate"`
	Address    addressDocument `bson:"address"`
	IsVerified bool            `bson:"isVerified"`
	CreatedAt  time.Time       `bson:"createdAt"`
	LastLogin  time.Time       `bson:"lastLogin"`
}

func fromDomainUser(u *domain.User) *userDocument {
	return &userDocument{
		UID:        u.UID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Birthplace: u.Birthplace,
		Birthdate:  u.Birthdate,
		Address: addressDocument{
			Province:    u.Address.Province,
			City:        u.Address.City,
			District:    u.Address.District,
			Subdistrict: u.Address.Subdistrict,
			Detail:      u.Address.Detail,
		},
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		LastLogin:  u.LastLogin,
	}
}

func (d *userDocument) toDomainUser() *domain.User {
	return &domain.User{
		UID:        d.UID,
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		Birthplace: d.Birthplace,
		Birthdate:  d.Birthdate,
		Address: domain.Address{
			Province:    d.Address.Province,
			City:        d.Address.City,
			District:    d.Address.District,
			Subdistrict: d.Address.Subdistrict,
			Detail:      d.Address.Detail,
		},
		IsVerified: d.IsVerified,
		CreatedAt:  d.CreatedAt.UTC(),
		LastLogin:  d.LastLogin.UTC(),
	}
}
