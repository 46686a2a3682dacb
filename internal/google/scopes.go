package google

// Scopes used by formcaller.
const (
	// FormsBodyReadonlyScope grants read access to form structure.
	FormsBodyReadonlyScope = "https://www.googleapis.com/auth/forms.body.readonly"

	// DriveMetadataReadonlyScope grants read access to Drive file metadata,
	// used to list the forms a user owns.
	DriveMetadataReadonlyScope = "https://www.googleapis.com/auth/drive.metadata.readonly"
)

// DefaultOAuthScopes are requested when OAuthConfig.Scopes is empty.
var DefaultOAuthScopes = []string{
	FormsBodyReadonlyScope,
	DriveMetadataReadonlyScope,
}
