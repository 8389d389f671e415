package db

import "context"

// Credential is one portal account registered in cad_usuarios_geg.
type Credential struct {
	Email    string
	Password string
}

// Credentials lists every registered portal account ordered by e-mail.
func (s Store) Credentials(ctx context.Context) ([]Credential, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"select email_cad_usuarios_geg, senha_cad_usuarios_geg from cad_usuarios_geg order by email_cad_usuarios_geg",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Credential
	for rows.Next() {
		var cred Credential
		err = rows.Scan(&cred.Email, &cred.Password)
		if err != nil {
			return nil, err
		}
		out = append(out, cred)
	}
	return out, rows.Err()
}

// PutCredential registers (or updates the password of) a portal account.
func (s Store) PutCredential(ctx context.Context, cred Credential) error {
	_, err := s.db.ExecContext(
		ctx,
		s.rebind(`insert into cad_usuarios_geg (email_cad_usuarios_geg, senha_cad_usuarios_geg) values (?, ?)
on conflict (email_cad_usuarios_geg) do update set senha_cad_usuarios_geg = excluded.senha_cad_usuarios_geg`),
		cred.Email, cred.Password,
	)
	return err
}
