package constants

// Table defaults. Running the CLI without configuration provisions exactly this table.
const (
	DefaultRegion           = "sa-east-1"
	DefaultTableName        = "AppControleOpcoes"
	DefaultPartitionKeyName = "PK"
	DefaultSortKeyName      = "SK"
)

// TableNamePattern is the character set DynamoDB accepts in table names.
// The 3-255 length bounds live in the TableSpec validate tag.
const TableNamePattern = `^[a-zA-Z0-9_.\-]+$`

// DynamoDBLocalEndpoint is the endpoint DynamoDB Local listens on by default.
const DynamoDBLocalEndpoint = "http://localhost:8000"

// DynamoDBLocalCredential is used as access key and secret when an endpoint
// override is configured without explicit credentials. DynamoDB Local accepts any value.
const DynamoDBLocalCredential = "dummy"

// DynamoDBLocalHint tells the user how to start DynamoDB Local.
const DynamoDBLocalHint = "Please ensure you have started DynamoDB Local " +
	"(e.g., java -jar DynamoDBLocal.jar or docker run -p 8000:8000 amazon/dynamodb-local)"

// NextSteps is the manual checklist printed after every provisioning attempt.
var NextSteps = []string{
	"Push your code to a Git repository (GitHub, GitLab, etc.).",
	"Connect the repository to AWS Amplify content.",
	"Add Environment Variables (OPLAB_API_KEY) in Amplify Console.",
	"Grant DynamoDB Permissions to the Amplify Role (See Guide).",
}
